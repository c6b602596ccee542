// Package sim provides the core discrete-event engine of the warehouse
// fulfillment simulator.
//
// # Reading Guide
//
// Start with these three files to understand the pipeline:
//   - request.go: Order and WorkRequest lifecycle (created → picked → sequenced → loaded)
//   - worker.go: the Receive/Act/Push protocol every worker role follows
//   - simulator.go: the Warehouse and the instruction loop
//
// # Architecture
//
// Orders are batched four at a time into WorkRequests and flow through a fixed
// topology:
//
//	Batcher → Picker → MarshalingArea → Sequencer → LoadingArea → Loader → TruckLoader
//
// Pickers draw from the Inventory, which queues pick faces for Replenishers
// once stock reaches the replenish threshold. A Sequencer that finds an item
// missing from the raw pallet voids the request and returns it to the front
// of the picking queue.
//
// Sub-packages:
//   - sim/trace/: decision trace of rejections, reworks and loads
//   - sim/script/: instruction script parser
//   - sim/layout/: warehouse layout, initial stock and product catalog loaders
//   - sim/report/: end-of-run stock and order reports, SQLite run archive
//
// # Errors
//
// Every rejection is a wrapped sentinel from errors.go. Classify maps it onto
// the reaction the caller should take; only configuration errors are fatal.
package sim
