// Package adservice tracks advertisement campaigns inside the
// audience-reach context: campaign windows, banner/popup selection and the
// impression and click counters. Counters move only through atomic
// increments so concurrent tracking calls never lose a count.
package adservice
