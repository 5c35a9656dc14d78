package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/category"
	"storefront-be/internal/checkout"
	"storefront-be/internal/customer"
	"storefront-be/internal/governorate"
	"storefront-be/internal/logger"
	"storefront-be/internal/packages"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid JSON body")

type errorStatus struct {
	err    error
	status int
}

var errorStatuses = []errorStatus{
	// -- 400 --
	{errInvalidBody, http.StatusBadRequest},
	{cart.ErrInvalidQuantity, http.StatusBadRequest},
	{cart.ErrMissingProductID, http.StatusBadRequest},
	{cart.ErrMissingSession, http.StatusBadRequest},
	{catalog.ErrNameRequired, http.StatusBadRequest},
	{catalog.ErrInvalidPrice, http.StatusBadRequest},
	{catalog.ErrInvalidStock, http.StatusBadRequest},
	{catalog.ErrNoFieldsToUpdate, http.StatusBadRequest},
	{catalog.ErrInvalidOfferRange, http.StatusBadRequest},
	{catalog.ErrOptionNameEmpty, http.StatusBadRequest},
	{category.ErrNameRequired, http.StatusBadRequest},
	{packages.ErrNameRequired, http.StatusBadRequest},
	{packages.ErrInvalidPrice, http.StatusBadRequest},
	{packages.ErrEmptyPackage, http.StatusBadRequest},
	{packages.ErrInvalidItemAmount, http.StatusBadRequest},
	{governorate.ErrNameRequired, http.StatusBadRequest},
	{governorate.ErrNegativeShipping, http.StatusBadRequest},
	{customer.ErrNameRequired, http.StatusBadRequest},
	{customer.ErrPhoneRequired, http.StatusBadRequest},
	{customer.ErrAddressRequired, http.StatusBadRequest},
	{checkout.ErrGovernorateRequired, http.StatusBadRequest},
	{checkout.ErrInvalidStatus, http.StatusBadRequest},
	{user.ErrInvalidEmail, http.StatusBadRequest},
	{user.ErrWeakPassword, http.StatusBadRequest},

	// -- 401 / 403 --
	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{packages.ErrUnauthorized, http.StatusForbidden},

	// -- 404 --
	{catalog.ErrProductNotFound, http.StatusNotFound},
	{catalog.ErrOfferNotFound, http.StatusNotFound},
	{catalog.ErrColorNotFound, http.StatusNotFound},
	{catalog.ErrSizeNotFound, http.StatusNotFound},
	{category.ErrCategoryNotFound, http.StatusNotFound},
	{packages.ErrPackageNotFound, http.StatusNotFound},
	{packages.ErrProductNotFound, http.StatusNotFound},
	{governorate.ErrGovernorateNotFound, http.StatusNotFound},
	{checkout.ErrOrderNotFound, http.StatusNotFound},

	// -- 409 --
	{checkout.ErrOrderIncomplete, http.StatusConflict},
	{checkout.ErrIdempotencyKeyInUse, http.StatusConflict},
	{category.ErrCategoryInUse, http.StatusConflict},
	{user.ErrEmailExists, http.StatusConflict},

	// -- 422 --
	{cart.ErrColorRequired, http.StatusUnprocessableEntity},
	{cart.ErrSizeRequired, http.StatusUnprocessableEntity},
	{cart.ErrUnknownColor, http.StatusUnprocessableEntity},
	{cart.ErrUnknownSize, http.StatusUnprocessableEntity},
	{cart.ErrColorCountMismatch, http.StatusUnprocessableEntity},
	{cart.ErrInsufficientStock, http.StatusUnprocessableEntity},
	{cart.ErrUnavailableProduct, http.StatusUnprocessableEntity},
	{cart.ErrUnavailablePackage, http.StatusUnprocessableEntity},
	{checkout.ErrEmptyCart, http.StatusUnprocessableEntity},
	{checkout.ErrInvalidTransition, http.StatusUnprocessableEntity},
}

// statusFor maps a service error to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal server error", status)
		return
	}

	utils.WriteJSONError(w, err.Error(), status)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errInvalidBody)
		}
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

type pageResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func paging(r *http.Request, defLimit int) (limit, page int) {
	q := r.URL.Query()
	return utils.ParsePositiveInt(q.Get("limit"), defLimit), utils.ParsePositiveInt(q.Get("page"), 1)
}
