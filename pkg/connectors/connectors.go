// Package connectors registers all supported backend connectors.
package connectors

import (
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/connectors/hana"
	"github.com/gitter-badger/quark/pkg/connectors/mssql"
	"github.com/gitter-badger/quark/pkg/connectors/mysql"
	"github.com/gitter-badger/quark/pkg/connectors/oracle"
	"github.com/gitter-badger/quark/pkg/connectors/postgres"
	"github.com/gitter-badger/quark/pkg/connectors/redshift"
	"github.com/gitter-badger/quark/pkg/connectors/snowflake"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

// RegisterAll registers every supported backend with the registry. Passing
// nil registers with the package default registry.
func RegisterAll(r *connector.Registry) {
	if r == nil {
		r = connector.DefaultRegistry()
	}
	r.Register(dbcapabilities.MySQL, mysql.New)
	r.Register(dbcapabilities.PostgreSQL, postgres.New)
	r.Register(dbcapabilities.Redshift, redshift.New)
	r.Register(dbcapabilities.HANA, hana.New)
	r.Register(dbcapabilities.SQLServer, mssql.New)
	r.Register(dbcapabilities.Oracle, oracle.New)
	r.Register(dbcapabilities.Snowflake, snowflake.New)
}
