// Package cover provides an exact L2 index backed by a cover tree. Subtree
// radii are cached once after Build, so the search prunes branches that
// cannot contain a closer point while still returning exact results.
package cover
