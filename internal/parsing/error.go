package parsing

import (
	"net/http"

	"github.com/hotgigs/talent/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("PARSING")

var (
	CodeEmptyFile            = ErrRegistry.Register("EMPTY_FILE", errx.TypeValidation, http.StatusBadRequest, "File is empty")
	CodeFileTooLarge         = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File exceeds maximum allowed size")
	CodeUnsupportedExtension = ErrRegistry.Register("UNSUPPORTED_EXTENSION", errx.TypeValidation, http.StatusBadRequest, "File extension is not supported")
	CodeAllProvidersFailed   = ErrRegistry.Register("ALL_PROVIDERS_FAILED", errx.TypeBusiness, http.StatusUnprocessableEntity, "No parsing provider could process the document")
)

func ErrEmptyFile() *errx.Error {
	return ErrRegistry.New(CodeEmptyFile)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrUnsupportedExtension() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedExtension)
}
