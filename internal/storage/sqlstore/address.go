package sqlstore

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

// AddressRepository implements storage.AddressRepository.
type AddressRepository struct {
	store *Store
}

var _ storage.AddressRepository = (*AddressRepository)(nil)

func (r *AddressRepository) Create(ctx context.Context, a *types.Address) error {
	err := r.store.transaction(ctx, func(c *conn) error {
		return insertAddress(ctx, c, a)
	})
	if err != nil {
		return fmt.Errorf("AddressRepository.Create: %w", err)
	}
	return nil
}

func (r *AddressRepository) GetAll(ctx context.Context) ([]types.Address, error) {
	var addresses []types.Address
	err := r.store.transaction(ctx, func(c *conn) error {
		var err error
		addresses, err = selectAddresses(ctx, c, `SELECT `+addressColumns+` FROM addresses ORDER BY id`)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("AddressRepository.GetAll: %w", err)
	}
	return addresses, nil
}

func (r *AddressRepository) GetByID(ctx context.Context, id int64) (types.Address, error) {
	var addresses []types.Address
	err := r.store.transaction(ctx, func(c *conn) error {
		var err error
		addresses, err = selectAddresses(ctx, c, `SELECT `+addressColumns+` FROM addresses WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return types.Address{}, fmt.Errorf("AddressRepository.GetByID: %w", err)
	}
	if len(addresses) == 0 {
		return types.Address{}, fmt.Errorf("AddressRepository.GetByID: no address with id %d: %w", id, storage.ErrNotFound)
	}
	return addresses[0], nil
}

func (r *AddressRepository) Update(ctx context.Context, a *types.Address) error {
	err := r.store.transaction(ctx, func(c *conn) error {
		return c.execAffecting(ctx,
			`UPDATE addresses SET country = ?, city = ?, address = ?, zip_code = ? WHERE id = ?`,
			append(addressArgs(a), a.ID)...,
		)
	})
	if err != nil {
		return fmt.Errorf("AddressRepository.Update: id %d: %w", a.ID, err)
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.transaction(ctx, func(c *conn) error {
		return c.execAffecting(ctx, `DELETE FROM addresses WHERE id = ?`, id)
	})
	if err != nil {
		return fmt.Errorf("AddressRepository.Delete: id %d: %w", id, err)
	}
	return nil
}

// UpdateAllToUSAByStudentName is a single UPDATE; the matching addresses
// are never loaded.
func (r *AddressRepository) UpdateAllToUSAByStudentName(ctx context.Context, name string) (int64, error) {
	var updated int64
	err := r.store.transaction(ctx, func(c *conn) error {
		res, err := c.exec(ctx, `
			UPDATE addresses SET country = ?
			WHERE id IN (
				SELECT address_id FROM students
				WHERE name = ? AND address_id IS NOT NULL
			)`,
			storage.USACountry, name,
		)
		if err != nil {
			return err
		}
		updated, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("AddressRepository.UpdateAllToUSAByStudentName: %w", err)
	}
	return updated, nil
}

func insertAddress(ctx context.Context, c *conn, a *types.Address) error {
	err := c.insert(ctx, &a.ID,
		`INSERT INTO addresses (country, city, address, zip_code) VALUES (?, ?, ?, ?)`,
		addressArgs(a)...,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

func selectAddresses(ctx context.Context, c *conn, query string, args ...any) ([]types.Address, error) {
	rows, err := c.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]types.Address, 0)
	for rows.Next() {
		var row addressRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}
	return addresses, nil
}
