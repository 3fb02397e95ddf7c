package model

import "time"

// City is a location cinemas are grouped under.  The browse screens list
// cities first so customers can narrow the cinema listing.  Corresponds to
// a row in the `cities` table.
//
// Fields:
//  ID        – primary key identifier.
//  UID       – public identifier exposed over the API.
//  Name      – unique city name.
//  CreatedAt – timestamp when the city was created.
//  UpdatedAt – timestamp of last update.
type City struct {
	ID        uint64    // cities.id
	UID       string    // cities.uid
	Name      string    // cities.name
	CreatedAt time.Time // cities.created_at
	UpdatedAt time.Time // cities.updated_at
}
