// Package dutyrotation resolves the on-duty pharmacy inside the town-guide
// context. The calendar date is the key: at most one pharmacy holds duty on
// a given day, and assignment is an admin upsert.
package dutyrotation
