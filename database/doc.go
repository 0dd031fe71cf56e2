/*
Package database accumulates the PTRs which belong in a reverse zone. Address RRs from
forward zones are offered to the database with Add() and it keeps the deduced PTR if the
address falls within one of the prefixes the database was created with.

Expected usage is:

	db := database.NewDatabase(prefixes...)
	for _, rr := range manualPTRs {
		db.Exclude(rr.Header().Name)
	}
	for _, rr := range forwardRRs {
		db.Add(rr)
	}
	ptrs := db.PTRs() // Sorted by owner then target

Multiple forward names for the same address result in multiple PTRs for the same owner
as the DNS allows that. Identical owner/target pairs are only kept once.

There is no internal concurrency protection.
*/
package database
