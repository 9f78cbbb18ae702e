package playlist

import "strings"

// Stored sources follow the upload convention "videos/<name>.mp4", with a
// bare "<name>.mp4" at the collection root as the only other shape. The
// edit flow decomposes a source into those two fields and recomposes it on
// save; this is a fixed two-folder transform, not general path parsing.

const videosFolder = "videos/"

// SplitSource derives the folder prefix and bare file name from a stored
// source value: the ".mp4" suffix is stripped, then the "videos/" prefix
// if present.
func SplitSource(source string) (folder, name string) {
	name = strings.TrimSuffix(source, ".mp4")
	if strings.HasPrefix(name, videosFolder) {
		return videosFolder, strings.TrimPrefix(name, videosFolder)
	}
	return "", name
}

// JoinSource recomposes a source value from a folder prefix ("videos/" or
// "") and a bare file name.
func JoinSource(folder, name string) string {
	return folder + name + ".mp4"
}
