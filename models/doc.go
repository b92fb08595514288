/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package models holds the entities of the bot-testing admin table and the
// typed patches that update them.
package models
