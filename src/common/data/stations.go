package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jack-barr3tt/stk-engine/src/common/stations"
	"github.com/jack-barr3tt/stk-engine/src/common/types"
	"github.com/jackc/pgx/v5"
)

const stationSchema = `
CREATE TABLE IF NOT EXISTS %s (
	id            TEXT PRIMARY KEY,
	operator_name TEXT,
	street        TEXT,
	town          TEXT,
	zip           TEXT
)`

func stationTable(t types.InspectionType) (string, error) {
	switch t {
	case types.InspectionSTK:
		return "station_stk", nil
	case types.InspectionME:
		return "station_me", nil
	}
	return "", fmt.Errorf("unknown inspection type %q", t)
}

func (dc *DataClient) EnsureStationSchema(ctx context.Context) error {
	for _, t := range []types.InspectionType{types.InspectionSTK, types.InspectionME} {
		table, _ := stationTable(t)
		if _, err := dc.pg.Exec(ctx, fmt.Sprintf(stationSchema, table)); err != nil {
			return fmt.Errorf("failed to create %s: %w", table, err)
		}
	}
	return nil
}

func (dc *DataClient) GetStations(ctx context.Context, t types.InspectionType) ([]types.StationInfo, error) {
	table, err := stationTable(t)
	if err != nil {
		return nil, err
	}

	rows, err := dc.pg.Query(ctx, fmt.Sprintf(`
		SELECT id, operator_name, street, town, zip
		FROM %s
		ORDER BY id
	`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []types.StationInfo{}
	for rows.Next() {
		var id string
		var operator, street, town, zip sql.NullString
		if err := rows.Scan(&id, &operator, &street, &town, &zip); err != nil {
			return nil, err
		}
		result = append(result, types.StationInfo{
			ID:           id,
			OperatorName: operator.String,
			Street:       street.String,
			Town:         town.String,
			Zip:          zip.String,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// LoadRegistry reads both station tables into an in-memory registry.
func (dc *DataClient) LoadRegistry(ctx context.Context) (*stations.Registry, error) {
	byType := map[types.InspectionType][]types.StationInfo{}
	for _, t := range []types.InspectionType{types.InspectionSTK, types.InspectionME} {
		list, err := dc.GetStations(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s stations: %w", t, err)
		}
		byType[t] = list
	}

	registry := stations.NewRegistry(byType)
	if dc.logger != nil {
		dc.logger.Infow("station registry loaded",
			"stk", registry.Len(types.InspectionSTK),
			"me", registry.Len(types.InspectionME))
	}
	return registry, nil
}

// ReplaceStations swaps the contents of one station table inside a single transaction.
func (dc *DataClient) ReplaceStations(ctx context.Context, t types.InspectionType, list []types.StationInfo) (int, error) {
	table, err := stationTable(t)
	if err != nil {
		return 0, err
	}

	tx, err := dc.pg.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+table); err != nil {
		return 0, fmt.Errorf("failed to truncate %s: %w", table, err)
	}

	batch := &pgx.Batch{}
	for _, s := range list {
		batch.Queue(fmt.Sprintf(`
			INSERT INTO %s (id, operator_name, street, town, zip)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				operator_name = EXCLUDED.operator_name,
				street = EXCLUDED.street,
				town = EXCLUDED.town,
				zip = EXCLUDED.zip
		`, table), s.ID, s.OperatorName, s.Street, s.Town, s.Zip)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return len(list), nil
}
