// Package locale resolves CSL locale data for a target language.
//
// A resolved locale is a layered chain: in-style overrides for the exact
// language, in-style overrides with no language, fetched XML for the exact
// language, fetched XML for the dialect fallback, and the built-in en-US
// data. Term lookups walk the layers in that order, trying the
// request-specific form fallback chain within each layer before moving to
// the next. Options and date formats merge by presence.
package locale
