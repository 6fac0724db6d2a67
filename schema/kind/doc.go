// Package kind enumerates the base entity types a generated entity may extend.
//
// A kind decides two things about the generated code:
//
//   - the superclass of the generated entity (none for [None]), and
//   - which table columns are already declared on that superclass and are
//     therefore "common": skipped on the entity and on its Save/Update DTOs.
//
// Tree and state entities additionally declare "structural" columns. Those
// are common too, but the DTOs must still expose them (a client creating a
// department has to send its parent), so the binding builder re-includes
// them through the uniqueColumns list.
//
//	base, err := kind.Lookup(kind.TreeEntity)
//	if err != nil {
//	    return err
//	}
//	base.Superclass  // "org.zetaframework.base.entity.TreeEntity"
//	base.Columns     // [id created_by create_time updated_by update_time parent_id label sort]
//	base.Structural  // [parent_id label sort]
//
// The set of kinds is closed. New kinds are added to the constant block and
// to the registry table in the same change; TestRegistryComplete fails if the
// table is missing an entry.
package kind
