package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to localized messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_/CATEGORY_) ====================
	ProductNotFound        = "PRODUCT_NOT_FOUND"
	ProductOutOfStock      = "PRODUCT_OUT_OF_STOCK"
	CategoryNotFound       = "CATEGORY_NOT_FOUND"
	CategoryNameExists     = "CATEGORY_NAME_EXISTS"
	DiscountNotFound       = "DISCOUNT_NOT_FOUND"
	DiscountInvalidEnd     = "DISCOUNT_INVALID_END_DATE"
	DiscountInvalidPercent = "DISCOUNT_INVALID_PERCENTAGE"

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderInvalidTransition = "ORDER_INVALID_TRANSITION"
	OrderInvalidShipping   = "ORDER_INVALID_SHIPPING_METHOD"
	OrderInvalidPayment    = "ORDER_INVALID_PAYMENT_METHOD"

	// ==================== Payments (PAYMENT_) ====================
	PaymentNotFound      = "PAYMENT_NOT_FOUND"
	PaymentNotUploadable = "PAYMENT_NOT_UPLOADABLE"
	PaymentNotPending    = "PAYMENT_NOT_PENDING"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound       = "REVIEW_NOT_FOUND"
	ReviewInvalidRating  = "REVIEW_INVALID_RATING"
	ReviewAlreadyExists  = "REVIEW_ALREADY_EXISTS"
	ReviewNotPurchased   = "REVIEW_NOT_PURCHASED"

	// ==================== Wishlist (WISHLIST_) ====================
	WishlistItemNotFound = "WISHLIST_ITEM_NOT_FOUND"
	WishlistItemExists   = "WISHLIST_ITEM_EXISTS"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"
)
