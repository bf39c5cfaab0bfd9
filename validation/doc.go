// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validation holds the pure field rules shared by the intake client and
the reference server.

# Rules

Every rule is a total function returning bool:

	validation.OrderNumberValid("ORDER001")   // trimmed length in [6, 20]
	validation.PhoneValid("13812345678")      // ^1[3-9]\d{9}$
	validation.PersonalityValid(desc)         // trimmed length in [10, 200]
	validation.FileSizeValid(size, max)       // 0 < size <= max
	validation.FileTypeValid(ct, allowed)     // canonical MIME membership

The package-level functions use DefaultLimits. A Limits value built from
configuration exposes the same rules as methods.

# Aggregation

CheckIntake runs every rule against an Intake and returns all failures in a
stable order. It never stops at the first failure:

	failures := limits.CheckIntake(validation.Intake{OrderNo: "AB12", ...})
	// [{Field: "orderNo", Message: "order number must be 6-20 characters"}]

An empty phone is "not provided" and passes CheckIntake even though
PhoneValid("") is false.

Lengths count runes, so a 10-character Chinese description is 10 long.
*/
package validation
