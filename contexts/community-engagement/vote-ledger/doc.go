// Package voteledger implements the engagement vote ledger inside the
// community-engagement context.
//
// The module owns one-shot official poll voting (AdminPoll), changeable
// agree/disagree voting on neighborhood polls (PublicPoll), and event RSVPs
// (PublicEvent). Aggregate counters and the per-user vote record live in the
// same transactional record so they can never drift apart.
package voteledger
