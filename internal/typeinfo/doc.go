// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

/*
Package typeinfo derives table schemas from Go struct types. As much as
possible, reflection code is limited to this package. Each field with a "db"
tag becomes a column whose SQL type and nullability follow the field's Go
type.
*/
package typeinfo
