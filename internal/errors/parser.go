package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a safe message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a database or driver error into a user-facing code and
// message. Raw driver text is never echoed back to the client; it stays in
// the server logs only.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	// GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	// Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}

	// Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "rating") {
			return ErrorInfo{
				Code:    ReviewInvalidRating,
				Message: "Rating must be between 1 and 5",
			}
		}
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Invalid input",
		}
	}

	// Network and connection errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Service temporarily unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred, please try again later",
	}
}

// ParseAndRespond parses an error and writes the response, for controller
// fallback branches where no sentinel matched.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}

	if strings.Contains(errLower, "idx_wishlist_user_product") {
		return ErrorInfo{
			Code:    WishlistItemExists,
			Message: "Product is already in your wishlist",
		}
	}

	if strings.Contains(errLower, "order_item_id") || strings.Contains(errLower, "product_reviews") {
		return ErrorInfo{
			Code:    ReviewAlreadyExists,
			Message: "This purchase has already been reviewed",
		}
	}

	if strings.Contains(errLower, "order_id") || strings.Contains(errLower, "payments") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "A payment already exists for this order",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "The data already exists",
	}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Cannot delete: other data still refers to this record",
		}
	}

	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "The referenced product does not exist",
		}
	}
	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{
			Code:    CategoryNotFound,
			Message: "The referenced category does not exist",
		}
	}
	if strings.Contains(errLower, "order_id") {
		return ErrorInfo{
			Code:    OrderNotFound,
			Message: "The referenced order does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "The referenced data does not exist",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "category"):
		return "Category not found"
	case strings.Contains(contextLower, "cart"):
		return "Cart item not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "payment"):
		return "Payment not found"
	case strings.Contains(contextLower, "review"):
		return "Review not found"
	case strings.Contains(contextLower, "wishlist"):
		return "Wishlist item not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}

	return "The requested data was not found"
}
