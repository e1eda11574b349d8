// Package calendar provides a thin client over the Google Calendar API
// for listing calendars, managing events and querying availability.
package calendar
