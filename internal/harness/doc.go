// Package harness runs canonicalization conformance manifests.
//
// A manifest is a YAML file listing test cases. Each case names an input
// document, its format, and either the expected canonical N-Quads or the
// error code the run must fail with.
//
// # Manifest Format
//
//	name: basic
//	description: "What this manifest covers"
//	tests:
//	  - name: single-blank-node
//	    input: inputs/single.nq
//	    expect: expected/single.nq
//	  - name: credential-jsonld
//	    input: inputs/credential.jsonld
//	    format: jsonld
//	    expect: expected/credential.nq
//	    labels:
//	      b0: c14n0
//	  - name: work-factor
//	    input: inputs/triangle.nq
//	    expect_error: DEGREE_LIMIT_EXCEEDED
//	    options:
//	      max_work_factor: 0
//
// Paths are relative to the manifest file. format defaults to nquads.
// Cases run sequentially and in manifest order; every case gets a fresh
// canonicalization run, so outcomes do not depend on each other.
package harness
