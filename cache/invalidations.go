package cache

// Mutation identifies a write operation for invalidation purposes.
type Mutation string

const (
	MutationProductCreate  Mutation = "product.create"
	MutationProductUpdate  Mutation = "product.update"
	MutationProductsDelete Mutation = "products.delete"

	MutationCategoryCreate   Mutation = "category.create"
	MutationCategoriesDelete Mutation = "categories.delete"

	MutationBillboardCreate Mutation = "billboard.create"
	MutationBillboardDelete Mutation = "billboard.delete"

	MutationPageCreate  Mutation = "page.create"
	MutationPageUpdate  Mutation = "page.update"
	MutationPageDelete  Mutation = "page.delete"
	MutationPagesDelete Mutation = "pages.delete"
)

// Invalidations is the static affected-key set of every mutation kind.
// Handlers look their mutation up here instead of remembering keys inline;
// a mutation missing from this table, or mapped to an empty set, is a bug
// the table test catches.
var Invalidations = map[Mutation][]Key{
	MutationProductCreate:  {KeyProducts},
	MutationProductUpdate:  {KeyProducts},
	MutationProductsDelete: {KeyProducts},

	MutationCategoryCreate:   {KeyProductCategories},
	MutationCategoriesDelete: {KeyProductCategories, KeyProducts},

	MutationBillboardCreate: {KeyBillboards},
	MutationBillboardDelete: {KeyBillboards},

	MutationPageCreate:  {KeyPages},
	MutationPageUpdate:  {KeyPages, KeyPageItems},
	MutationPageDelete:  {KeyPages, KeyPageItems},
	MutationPagesDelete: {KeyPages, KeyPageItems},
}

// Mutations lists every mutation kind, for table-coverage checks.
func Mutations() []Mutation {
	return []Mutation{
		MutationProductCreate,
		MutationProductUpdate,
		MutationProductsDelete,
		MutationCategoryCreate,
		MutationCategoriesDelete,
		MutationBillboardCreate,
		MutationBillboardDelete,
		MutationPageCreate,
		MutationPageUpdate,
		MutationPageDelete,
		MutationPagesDelete,
	}
}

// InvalidateMutation drops every key the mutation kind affects.
func (s *Store) InvalidateMutation(m Mutation) {
	keys, ok := Invalidations[m]
	if !ok {
		s.log.Error().Str("mutation", string(m)).Msg("mutation has no declared invalidation set")
		return
	}
	s.Invalidate(keys...)
}
