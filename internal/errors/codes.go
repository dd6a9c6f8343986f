package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to localized messages.

const (
	// ==================== autenticação (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong identifier/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token blacklisted
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"     // duplicate username
	AuthCpfCnpjExists      = "AUTH_CPF_CNPJ_EXISTS"     // duplicate CPF/CNPJ
	AuthResetTokenInvalid  = "AUTH_RESET_TOKEN_INVALID" // invalid reset token
	AuthResetTokenExpired  = "AUTH_RESET_TOKEN_EXPIRED" // expired reset token

	// ==================== autorização (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"  // operation not allowed
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // missing role claim
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin only
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // owner only

	// ==================== validação (VALIDATION_) ====================
	ValidationInvalidInput    = "VALIDATION_INVALID_INPUT"    // bad input
	ValidationInvalidID       = "VALIDATION_INVALID_ID"       // bad ID
	ValidationInvalidFormat   = "VALIDATION_INVALID_FORMAT"   // bad format
	ValidationInvalidRange    = "VALIDATION_INVALID_RANGE"    // out of range
	ValidationInvalidDocument = "VALIDATION_INVALID_DOCUMENT" // invalid CPF/CNPJ
	ValidationInvalidPhone    = "VALIDATION_INVALID_PHONE"    // invalid phone
	ValidationRequired        = "VALIDATION_REQUIRED"         // required field

	// ==================== recurso (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // missing
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // already exists
	ResourceConflict      = "RESOURCE_CONFLICT"       // conflict

	// ==================== empresa (EMPRESA_) ====================
	EmpresaNotFound      = "EMPRESA_NOT_FOUND"       // listing missing
	EmpresaCnpjExists    = "EMPRESA_CNPJ_EXISTS"     // duplicate CNPJ
	EmpresaSlugExists    = "EMPRESA_SLUG_EXISTS"     // slug collision
	EmpresaImageLimit    = "EMPRESA_IMAGE_LIMIT"     // too many images
	EmpresaImageNotFound = "EMPRESA_IMAGE_NOT_FOUND" // image missing

	// ==================== tag (TAG_) ====================
	TagNotFound      = "TAG_NOT_FOUND"       // tag missing
	TagAlreadyExists = "TAG_ALREADY_EXISTS"  // duplicate name
	TagInvalidParent = "TAG_INVALID_PARENT"  // parent must be a root tag
	TagHasChildren   = "TAG_HAS_CHILDREN"    // cannot delete non-empty parent

	// ==================== avaliação (AVALIACAO_) ====================
	AvaliacaoNotFound      = "AVALIACAO_NOT_FOUND"      // rating missing
	AvaliacaoInvalidNota   = "AVALIACAO_INVALID_NOTA"   // nota out of 1-5
	AvaliacaoAlreadyExists = "AVALIACAO_ALREADY_EXISTS" // user already rated

	// ==================== importação (IMPORT_) ====================
	ImportInvalidFile     = "IMPORT_INVALID_FILE"     // unreadable file
	ImportUnknownFormat   = "IMPORT_UNKNOWN_FORMAT"   // unsupported extension
	ImportMissingHeaders  = "IMPORT_MISSING_HEADERS"  // no recognizable columns
	ImportEmptySheet      = "IMPORT_EMPTY_SHEET"      // no data rows
	ImportProcessingError = "IMPORT_PROCESSING_ERROR" // pipeline failure

	// ==================== upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // bad file type
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // file too big
	UploadFailed          = "UPLOAD_FAILED"            // upload failure

	// ==================== interno (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // server error
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB error
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // external API error
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // config error
)
