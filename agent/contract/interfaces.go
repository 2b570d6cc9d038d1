package contract

import "context"

// Catalog resolves product records for one business. Implementations must be
// safe for concurrent reads; it is the only resource shared across sessions.
type Catalog interface {
	// ProductsForBusiness returns every product synced for the business.
	// An empty slice means "no data", not a fault.
	ProductsForBusiness(ctx context.Context, businessKey string) ([]Product, error)
	// ProductByID returns nil for a missing or disabled product. A non-nil
	// error means the store itself could not be reached.
	ProductByID(ctx context.Context, id string) (*Product, error)
}

// CustomerDirectory looks up known callers by phone number.
type CustomerDirectory interface {
	CustomerByPhone(ctx context.Context, phone string) (*Customer, error)
}

// CallControl is the outbound boundary to the telephony control plane.
type CallControl interface {
	// TransferToDialtone moves the participant bound at construction time
	// out of the agent session. Failure is reported, never panicked.
	TransferToDialtone(ctx context.Context) error
}
