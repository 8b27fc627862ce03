// Package persistence defines the durable records and store contracts for
// the arena server: character storage, online presence, match records, and
// combat statistics. Implementations live under persistence/sqlite; the
// game-logic layer depends only on the interfaces declared here.
package persistence
