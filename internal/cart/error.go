package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity    = errors.New("invalid cart quantity")
	ErrMissingProductID   = errors.New("product id is required")
	ErrMissingSession     = errors.New("cart session is required")
	ErrColorRequired      = errors.New("please choose a color")
	ErrSizeRequired       = errors.New("please choose a size")
	ErrUnknownColor       = errors.New("selected color is not available for this product")
	ErrUnknownSize        = errors.New("selected size is not available for this product")
	ErrColorCountMismatch = errors.New("choose one color for every piece in the package")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrUnavailableProduct = errors.New("product is not available")
	ErrUnavailablePackage = errors.New("package is not available")
	ErrMissingPriceSource = errors.New("price source is not configured")

	// -- Storage --
	ErrSnapshotNotFound = errors.New("cart snapshot not found")
	ErrFailedSaveCart   = errors.New("failed to save cart snapshot")
	ErrFailedLoadCart   = errors.New("failed to load cart snapshot")
)
