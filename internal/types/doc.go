/*
Package types defines the registry data structures shared across crateview.

# Records

Crate:
  - One search result row
  - Immutable snapshot of name, description, download counts, timestamps
  - Links to repository, homepage and documentation

CrateDetail:
  - Crate plus versions, keywords and categories
  - Shown in the info pane and the inspect popup

Summary:
  - Registry front page (new, most downloaded, just updated crates)
  - Popular keywords and categories

# Search

SearchParams identifies one page request (query, sort, page, page size).
Page carries the returned crates and the registry-wide total.

SortKey values match the registry's sort parameter. SortKeys fixes the
cycle order used when toggling sort; Next and Prev wrap around.
*/
package types
