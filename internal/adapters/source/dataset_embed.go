package source

import _ "embed"

// embeddedDataset contains the shipped salary dataset.
//
//go:embed dataset.yaml
var embeddedDataset []byte
