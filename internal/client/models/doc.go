// Package models defines the client-side data model of the user directory.
package models
