package sqlite

// Schema DDL for the two fixture tables.
const (
	createHierarchy = `CREATE TABLE HIERARCHY(id int primary key, parentid int)`

	createSimpleTable = `CREATE TABLE SIMPLETABLE(id int primary key, value CHAR(25))`

	insertHierarchy = `INSERT INTO HIERARCHY(id, parentid) values (?,?)`

	insertSimpleTable = `INSERT INTO SIMPLETABLE(id, value) values (?,?)`
)

// schemaStatements lists the DDL in execution order.
var schemaStatements = []string{
	createHierarchy,
	createSimpleTable,
}
