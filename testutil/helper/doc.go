// Package helper provides engines, fixtures and Given* functions for tests of the store and the features.
package helper
