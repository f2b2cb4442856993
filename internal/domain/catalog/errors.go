package catalog

import "fmt"

// Domain errors

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Predefined domain errors

func ErrInvalidCatalog(detail string) *DomainError {
	return &DomainError{
		Code:    "INVALID_CATALOG",
		Message: detail,
	}
}

func ErrOwnerNotFound(owner string) *DomainError {
	return &DomainError{
		Code:    "OWNER_NOT_FOUND",
		Message: fmt.Sprintf("owner %q not found in catalog", owner),
	}
}

func ErrLanguageNotFound(name string) *DomainError {
	return &DomainError{
		Code:    "LANGUAGE_NOT_FOUND",
		Message: fmt.Sprintf("language %q not found in catalog", name),
	}
}

func ErrCategoryNotFound(name string) *DomainError {
	return &DomainError{
		Code:    "CATEGORY_NOT_FOUND",
		Message: fmt.Sprintf("category %q not found in catalog", name),
	}
}

func ErrInvalidRepoName(fullName string) *DomainError {
	return &DomainError{
		Code:    "INVALID_REPO_NAME",
		Message: fmt.Sprintf("%q is not a valid owner/repo reference", fullName),
	}
}

func ErrLoadFailed(source string, err error) *DomainError {
	return &DomainError{
		Code:    "CATALOG_LOAD_FAILED",
		Message: fmt.Sprintf("failed to load catalog from %s", source),
		Err:     err,
	}
}

func ErrUnknownSource(name string) *DomainError {
	return &DomainError{
		Code:    "UNKNOWN_SOURCE",
		Message: fmt.Sprintf("no catalog source named %q is configured", name),
	}
}
