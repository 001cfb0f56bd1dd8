// Package metrics accumulates compatibility statistics across many
// translations.
//
// An Aggregator counts translated source instructions per level and
// keeps running totals of the execution time of every target instruction
// produced, weighted per target. The efficiency ratio compares the
// time an all-native lowering would have taken against the time the
// actual lowering takes; it is 1.0 when nothing has been recorded.
//
// Aggregator methods are safe for concurrent use. A Collector funnels
// records from many goroutines through a channel to one consumer.
package metrics
