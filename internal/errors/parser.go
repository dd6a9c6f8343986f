package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries a stable code plus a user-facing message.
type ErrorInfo struct {
	Code    string // error code (see codes.go)
	Message string // user-friendly message (pt-BR)
}

// ParseError converts an error into a code and a user-friendly message.
// Sensitive internals stay hidden; the user still gets enough to act on.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocorreu um erro no servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL error parsing

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr, context)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr, context)
	}

	// 2-4. Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStr, context)
	}

	// 3. Business errors raised by the service layer
	if strings.Contains(errStr, "empresa não encontrada") {
		return ErrorInfo{Code: EmpresaNotFound, Message: "Empresa não encontrada"}
	}
	if strings.Contains(errStr, "sem permissão para alterar esta empresa") {
		return ErrorInfo{Code: AuthzForbidden, Message: "Você não tem permissão para alterar esta empresa"}
	}
	if strings.Contains(errStr, "avaliação já registrada") {
		return ErrorInfo{Code: AvaliacaoAlreadyExists, Message: "Você já avaliou esta empresa"}
	}
	if strings.Contains(errStr, "limite de imagens atingido") {
		return ErrorInfo{Code: EmpresaImageLimit, Message: "Limite de imagens por empresa atingido"}
	}

	// 4. Network/connectivity errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Falha ao conectar a um serviço externo. Tente novamente em instantes",
		}
	}

	// 5. Default internal error
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "cpf_cnpj") || strings.Contains(errLower, "idx_profiles_cpf_cnpj") {
		return ErrorInfo{
			Code:    AuthCpfCnpjExists,
			Message: "CPF/CNPJ já cadastrado",
		}
	}

	if strings.Contains(errLower, "slug") || strings.Contains(errLower, "idx_empresas_slug") {
		return ErrorInfo{
			Code:    EmpresaSlugExists,
			Message: "Identificador da empresa já está em uso",
		}
	}

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "E-mail já está em uso",
		}
	}

	if strings.Contains(errLower, "username") || strings.Contains(errLower, "idx_users_username") {
		return ErrorInfo{
			Code:    AuthUsernameExists,
			Message: "Nome de usuário já está em uso",
		}
	}

	// one rating per user per listing
	if strings.Contains(errLower, "avaliacao") || strings.Contains(errLower, "idx_avaliacao_empresa_user") {
		return ErrorInfo{
			Code:    AvaliacaoAlreadyExists,
			Message: "Você já avaliou esta empresa",
		}
	}

	if strings.Contains(errLower, "tags") && strings.Contains(errLower, "nome") {
		return ErrorInfo{
			Code:    TagAlreadyExists,
			Message: "Já existe uma categoria com esse nome",
		}
	}

	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Registro já existente. Tente novamente",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Registro já existente",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "empresa") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "Existem dados vinculados a esta empresa; não é possível excluí-la",
			}
		}
		if strings.Contains(context, "tag") {
			return ErrorInfo{
				Code:    TagHasChildren,
				Message: "Existem dados vinculados a esta categoria; não é possível excluí-la",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Existem dados vinculados; não é possível excluir",
		}
	}

	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "Usuário inexistente",
		}
	}
	if strings.Contains(errLower, "empresa_id") || strings.Contains(errLower, "fk_empresas") {
		return ErrorInfo{
			Code:    EmpresaNotFound,
			Message: "Empresa inexistente",
		}
	}
	if strings.Contains(errLower, "parent_id") || strings.Contains(errLower, "fk_tags") {
		return ErrorInfo{
			Code:    TagNotFound,
			Message: "Categoria pai inexistente",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Registro referenciado não encontrado",
	}
}

func parseNotNullError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "E-mail é obrigatório"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "Senha é obrigatória"}
	}
	if strings.Contains(errLower, "nome") {
		return ErrorInfo{Code: ValidationRequired, Message: "Nome é obrigatório"}
	}
	if strings.Contains(errLower, "username") {
		return ErrorInfo{Code: ValidationRequired, Message: "Nome de usuário é obrigatório"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "Campo obrigatório não informado",
	}
}

func parseCheckConstraintError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "nota") {
		return ErrorInfo{
			Code:    AvaliacaoInvalidNota,
			Message: "A nota deve ser um valor entre 1 e 5",
		}
	}

	if strings.Contains(errLower, "latitude") || strings.Contains(errLower, "longitude") {
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "Latitude/longitude inválidas",
		}
	}

	return ErrorInfo{
		Code:    ValidationInvalidInput,
		Message: "Valor informado é inválido",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "empresa") {
		return "Empresa não encontrada"
	}
	if strings.Contains(contextLower, "user") || strings.Contains(contextLower, "usuário") || strings.Contains(contextLower, "usuario") {
		return "Usuário não encontrado"
	}
	if strings.Contains(contextLower, "avalia") || strings.Contains(contextLower, "rating") {
		return "Avaliação não encontrada"
	}
	if strings.Contains(contextLower, "tag") || strings.Contains(contextLower, "categoria") {
		return "Categoria não encontrada"
	}
	if strings.Contains(contextLower, "image") || strings.Contains(contextLower, "imagem") {
		return "Imagem não encontrada"
	}
	if strings.Contains(contextLower, "favorit") {
		return "Favorito não encontrado"
	}

	return "Registro não encontrado"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "cadastr") {
		return "Erro ao cadastrar. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "update") || strings.Contains(contextLower, "atualiz") {
		return "Erro ao atualizar. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "exclu") {
		return "Erro ao excluir. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "import") {
		return "Erro durante a importação. Tente novamente em instantes"
	}

	return "Ocorreu um erro no servidor. Tente novamente em instantes"
}

// ParseAndRespond parses the error and writes the JSON response.
// Convenience for controllers.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
