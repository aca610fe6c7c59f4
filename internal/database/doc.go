// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, category seeding
//	├── catalog/         # Read-only category/sound/variant queries + sync upserts
//	├── sessionlists/    # Session list CRUD and entry ordering/uniqueness
//	└── users/           # User accounts and pending email changes
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./soundboard.db")
//
//	// Create domain-specific repositories
//	catalogRepo := catalog.NewRepository(db.DB)
//	listsRepo := sessionlists.NewRepository(db.DB)
//	usersRepo := users.NewRepository(db.DB)
//
// Cascading deletes that the original schema declared at the ORM level are
// explicit here: sessionlists deletes a list's entries inside the same
// transaction, and users deletes a user's lists (and their entries) the
// same way.
package database
