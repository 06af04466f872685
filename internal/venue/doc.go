// Package venue holds the stateless helpers of the venue and weather explorer
// page: unit conversion and display formatting, form input validators, and
// request helpers for the Foursquare and OpenWeather APIs.
package venue
