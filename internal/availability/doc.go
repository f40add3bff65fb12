// Package availability decides whether recipes can be made from a
// workspace's current inventory.
//
// Evaluation is pure: a Snapshot is built once from a consistent read of the
// workspace and is never modified afterwards, so the same Snapshot may be
// shared by every recipe of a bulk query and by concurrent goroutines.
//
// Each recipe step carries a match mode:
//
//   - EXACT_PRODUCT: the linked product has stock.
//   - ANY_IN_CATEGORY: any product in the step's category override (or the
//     linked product's category) has stock.
//   - ANY_IN_PARENT_CATEGORY: any product in an interchangeable category of
//     the linked product's category has stock. The override is ignored here.
//
// The category hierarchy is at most one level deep. Interchangeable is
// written for exactly that depth.
package availability
