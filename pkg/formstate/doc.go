// Package formstate owns the mutable storage unit form state. A Manager wraps
// one unit.StorageUnit, applies field edits addressed by a Target, and runs
// the derivation cascade that keeps compartment, sensor area, and sensor
// identifiers in step with the root fields.
//
// Two legacy behaviors are kept on purpose and covered by tests. A root edit
// derives compartment and sensor area ids from the code id held before the
// edit, so editing codeId itself yields ids that lag one edit behind (see
// Cascade). Sensor hardware ids, on the other hand, read the post-edit
// hardware id.
package formstate
