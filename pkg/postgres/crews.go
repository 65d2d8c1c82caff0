package postgres

import (
	"context"
	"fmt"

	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// GetCrews retrieves all crew records ordered by name
func (d *DB) GetCrews(ctx context.Context) ([]db.Crew, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, COALESCE(lead_worker_id::TEXT, '')
		FROM crews
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query crews: %w", err)
	}
	defer rows.Close()

	var crews []db.Crew
	for rows.Next() {
		var c db.Crew
		if err := rows.Scan(&c.ID, &c.Name, &c.LeadWorkerID); err != nil {
			return nil, fmt.Errorf("failed to scan crew: %w", err)
		}
		crews = append(crews, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crews: %w", err)
	}

	return crews, nil
}

// GetCrewMembers retrieves every crew membership record
func (d *DB) GetCrewMembers(ctx context.Context) ([]db.CrewMember, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT crew_id, worker_id
		FROM crew_members
		ORDER BY crew_id, worker_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query crew members: %w", err)
	}
	defer rows.Close()

	var members []db.CrewMember
	for rows.Next() {
		var m db.CrewMember
		if err := rows.Scan(&m.CrewID, &m.WorkerID); err != nil {
			return nil, fmt.Errorf("failed to scan crew member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crew members: %w", err)
	}

	return members, nil
}

// GetCrewCapabilities retrieves every crew role capability record
func (d *DB) GetCrewCapabilities(ctx context.Context) ([]db.CrewCapability, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT crew_id, role_id, capacity, proficiency_level
		FROM crew_capabilities
		ORDER BY crew_id, role_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query crew capabilities: %w", err)
	}
	defer rows.Close()

	var capabilities []db.CrewCapability
	for rows.Next() {
		var c db.CrewCapability
		if err := rows.Scan(&c.CrewID, &c.RoleID, &c.Capacity, &c.Level); err != nil {
			return nil, fmt.Errorf("failed to scan crew capability: %w", err)
		}
		capabilities = append(capabilities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read crew capabilities: %w", err)
	}

	return capabilities, nil
}
