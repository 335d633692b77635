// Package changecopystatus implements the manual status edit of a copy.
//
// Staff with the can_change_status permission set a copy to Maintenance, Available or Reserved.
// A copy that was on loan loses its loan. The on-loan status itself is only reachable by lending.
package changecopystatus
