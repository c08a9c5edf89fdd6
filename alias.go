// Copyright 2023 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package aqueryon

import (
	"strconv"
)

const defaultAliasPrefix = "t"

// aliasNamespace holds the alias prefix shared by every source attached
// through one builder lineage. It is not safe for concurrent use: the prefix
// must be set before a query is rendered from several goroutines.
type aliasNamespace struct {
	prefix string
}

// SourceAlias is the name a source is given in the SQL. It is the prefix of
// the builder lineage followed by the position in which the source was
// attached. The prefix is read each time the alias is written, so renaming
// it changes the alias of sources attached earlier too.
type SourceAlias struct {
	ns     *aliasNamespace
	suffix int
}

func (a SourceAlias) String() string {
	if a.ns == nil {
		return ""
	}
	return a.ns.prefix + strconv.Itoa(a.suffix)
}
