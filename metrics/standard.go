package metrics

var (
	// ---- Script metrics ----

	// ScriptsEncoded counts call scripts successfully built.
	ScriptsEncoded = newCounter("script", "encoded_total", "Call scripts successfully encoded.")
	// ScriptErrors counts script builds that failed.
	ScriptErrors = newCounter("script", "errors_total", "Call script builds that failed.")
	// ActionsEncoded counts actions framed into scripts.
	ActionsEncoded = newCounter("script", "actions_total", "Actions framed into call scripts.")
	// ScriptSize records encoded script sizes in bytes.
	ScriptSize = newHistogram("script", "size_bytes", "Encoded call script size in bytes.",
		[]float64{4, 64, 256, 1024, 4096, 16384, 65536})

	// ---- Artifact metrics ----

	// ArtifactLoads counts artifacts read and parsed from the resource root.
	ArtifactLoads = newCounter("artifact", "loads_total", "Artifacts read from the resource root.")
	// ArtifactCacheHits counts artifact lookups served from cache.
	ArtifactCacheHits = newCounter("artifact", "cache_hits_total", "Artifact lookups served from cache.")
	// ArtifactNotFound counts lookups for names with no artifact.
	ArtifactNotFound = newCounter("artifact", "not_found_total", "Artifact lookups with no matching definition.")
)
