// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package data embeds the SQL migrations so the API binary can migrate a
// database without the source tree next to it.
package data

import "embed"

// Migrations holds every migrations/*.sql file, in golang-migrate naming.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of [Migrations] that holds the files.
const MigrationsDir = "migrations"
