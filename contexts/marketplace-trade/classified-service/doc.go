// Package classifiedservice implements the classified-ad lifecycle inside
// the marketplace-trade context.
//
// The module owns listing submission, the moderator decision state machine
// (pending -> approved/rejected), and the featured-listing promotion chain
// (none -> pending -> active -> expired) including the expiry sweep worker.
// Business rules live in application/domain layers and infrastructure stays
// behind ports and adapters.
package classifiedservice
