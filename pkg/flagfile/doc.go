// Package flagfile loads feature flag seed files.
//
// A seed file is YAML (JSON works too) listing tenants and flag definitions:
//
//	tenants:
//	  - id: 0b7c6f1e-8f3e-4c1a-9d2e-3f4a5b6c7d8e
//	    name: Northwind Academy
//	    plan: pro
//	flags:
//	  - key: new-gradebook
//	    type: boolean
//	    default: true
//	  - key: dashboard-layout
//	    type: variant
//	    default: classic
//	    planRequirement: pro
//	    overrides:
//	      - tenantId: 0b7c6f1e-8f3e-4c1a-9d2e-3f4a5b6c7d8e
//	        value: compact
//
// Parse checks the document against an embedded JSON schema before
// decoding. Apply upserts the result through the feature registry, and Watch
// re-applies the file whenever it changes on disk.
package flagfile
