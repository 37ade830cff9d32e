// SPDX-License-Identifier: EPL-2.0

package id3_test

import (
	"fmt"

	"github.com/ik5/tonemp3/id3"
	"github.com/ik5/tonemp3/metadata"
)

func ExampleBuild() {
	tag, err := id3.Build(metadata.Track{Title: "Test", TrackNumber: "1"})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s v2.%d, %d bytes\n", tag[:3], tag[3], len(tag))

	empty, _ := id3.Build(metadata.Track{})
	fmt.Println(len(empty))
	// Output:
	// ID3 v2.3, 46 bytes
	// 0
}
