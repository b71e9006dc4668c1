// Package pool
// Author: momentics <momentics@gmail.com>
//
// Memory layer for speedcore: a bump-pointer Arena with O(1) bulk reset,
// generation-checked Region handles and typed scalar views over arena
// memory. An Arena is not safe for concurrent use.
package pool
