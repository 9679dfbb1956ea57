package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cotador/internal/db"
	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/repository"
	"github.com/alexanderramin/cotador/internal/seed"
)

type supplierService struct {
	suppliers repository.SupplierRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewSupplierService(suppliers repository.SupplierRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SupplierService {
	return &supplierService{suppliers: suppliers, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// List returns the suppliers of one service type, or the whole directory
// in collection order when serviceType is empty.
func (s *supplierService) List(ctx context.Context, serviceType domain.ServiceType) ([]domain.Supplier, error) {
	if serviceType != "" {
		coll, ok := serviceType.Collection()
		if !ok {
			return nil, fmt.Errorf("unknown service type %q", serviceType)
		}
		return s.suppliers.ListByService(ctx, coll, serviceType)
	}
	var all []domain.Supplier
	for _, coll := range domain.SupplierCollections {
		list, err := s.suppliers.ListCollection(ctx, coll)
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
	}
	return all, nil
}

func (s *supplierService) Seed(ctx context.Context, fixture seed.Fixture) (res seed.Result, err error) {
	fields := map[string]any{"collections": len(fixture)}
	defer observe(ctx, s.observer, "seed-suppliers", fields, &err)()

	res, err = seed.Apply(ctx, s.uow, fixture)
	if err != nil {
		return nil, err
	}
	for coll, n := range res {
		fields[string(coll)] = n
	}
	return res, nil
}

func (s *supplierService) Count(ctx context.Context) (int, error) {
	return s.suppliers.Count(ctx)
}
