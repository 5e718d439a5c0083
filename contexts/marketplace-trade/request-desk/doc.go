// Package requestdesk collects inbound requests in the marketplace-trade
// context: businesses asking to be listed and users suggesting poll topics.
// Both kinds move pending to reviewed exactly once under a conditional
// write.
package requestdesk
