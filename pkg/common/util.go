//
//  Copyright © Manetu Inc. All rights reserved.
//

package common

import (
	"encoding/json"
	"io"
)

// PrettyPrint writes an indented JSON representation of the provided data
// structure, used for report output and debugging.
func PrettyPrint(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
