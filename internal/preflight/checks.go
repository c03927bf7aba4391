package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"retake/internal/fileutil"
)

// CheckSourceAccess verifies the directory exists and is readable. Write
// access is deliberately not required: the source tree is read-only input.
func CheckSourceAccess(name, path string) Result {
	if r, ok := statDirectory(name, path); !ok {
		return r
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckDirectoryAccess verifies the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if r, ok := statDirectory(name, path); !ok {
		return r
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the destination filesystem can hold a full copy
// of the source tree. Collision-numbered extras are negligible next to the
// media bytes themselves.
func CheckFreeSpace(sourceDir, destinationDir string) Result {
	const name = "Destination free space"

	needed, err := fileutil.TreeSize(sourceDir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("measure source tree: %v", err)}
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(destinationDir, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", destinationDir, err)}
	}
	available := int64(stat.Bavail) * int64(stat.Bsize)

	if available < needed {
		return Result{Name: name, Detail: fmt.Sprintf("need %d bytes, %d available", needed, available)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d bytes needed, %d available", needed, available)}
}

func statDirectory(name, path string) (Result, bool) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}, false
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}, false
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}, false
	}
	return Result{}, true
}
