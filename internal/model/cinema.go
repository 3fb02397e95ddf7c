package model

import "time"

// Cinema represents a movie theatre venue located in a city.  A cinema
// contains one or more halls.  Timezone holds the IANA zone name the venue
// operates in; showing windows are always computed in this zone rather than
// whatever zone the administrator's machine runs in.  This struct
// corresponds to a row in the `cinemas` table.
//
// Fields:
//  ID        – primary key identifier.
//  UID       – public identifier exposed over the API.
//  CityID    – city the cinema is located in.
//  Name      – unique name of the cinema per city.
//  Timezone  – IANA zone name (e.g. "Europe/Berlin"); empty means server zone.
//  IsActive  – whether the cinema is visible to customers.
//  CreatedAt – timestamp when the cinema was created.
//  UpdatedAt – timestamp of last update.
type Cinema struct {
	ID        uint64    // cinemas.id
	UID       string    // cinemas.uid
	CityID    uint64    // cinemas.city_id
	Name      string    // cinemas.name
	Timezone  string    // cinemas.timezone
	IsActive  bool      // cinemas.is_active
	CreatedAt time.Time // cinemas.created_at
	UpdatedAt time.Time // cinemas.updated_at
}
