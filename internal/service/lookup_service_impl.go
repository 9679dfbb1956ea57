package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/repository"
)

type lookupService struct {
	suppliers repository.SupplierRepo
	log       *zap.Logger
}

func NewLookupService(suppliers repository.SupplierRepo, log *zap.Logger) LookupService {
	return &lookupService{suppliers: suppliers, log: orNop(log)}
}

// Lookup returns every supplier of the task's service type in directory
// order. Store failures are logged and read as an empty directory.
func (s *lookupService) Lookup(ctx context.Context, task domain.Task) []domain.Supplier {
	coll, ok := task.ServiceType.Collection()
	if !ok {
		s.log.Warn("lookup: unknown service type", zap.String("service_type", string(task.ServiceType)))
		return []domain.Supplier{}
	}
	found, err := s.suppliers.ListByService(ctx, coll, task.ServiceType)
	if err != nil {
		s.log.Warn("lookup failed", zap.Error(err), zap.String("collection", string(coll)))
		return []domain.Supplier{}
	}
	if found == nil {
		return []domain.Supplier{}
	}
	return found
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
