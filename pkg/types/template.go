// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MissingPlaceholder is the literal token the enforcer writes into a
// template section that the document did not fill ("not filled" in Hebrew,
// the corpus language). The scorer treats a section holding exactly this
// token as unfilled.
const MissingPlaceholder = "[לא מולא]"
