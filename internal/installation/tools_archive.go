package installation

import (
	"os"
	"path/filepath"
)

const toolsArchiveName = "tools.jar"

// LocateToolsArchive looks for lib/tools.jar under the home directory.
// When home is the 'jre' directory of a JDK, the JDK's lib directory is checked as well.
func LocateToolsArchive(home string) (string, bool) {
	candidates := []string{filepath.Join(home, "lib", toolsArchiveName)}
	if filepath.Base(home) == "jre" {
		candidates = append(candidates, filepath.Join(filepath.Dir(home), "lib", toolsArchiveName))
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && info.Mode().IsRegular() {
			return c, true
		}
	}

	return "", false
}
