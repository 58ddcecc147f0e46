/*
Package sqldataset reads and writes tables of labeled points from and to a
SQL database table.

The database table has a column per feature, named after it, plus a column
for the label. Boolean features and the label are stored as integers (0 for
false), categorical features as their textual value and continuous features
as floating point numbers. The SQL dialect specifics are provided by an
Adapter, with implementations for SQLite3 and PostgreSQL in the
sqlite3adapter and pgadapter packages.
*/
package sqldataset
