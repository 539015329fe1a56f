package captoken

import (
	"fmt"
	"runtime"
)

var (
	appname = "captoken"
	version = "0.2.1"
)

func CurrentVersion() string {
	return version
}

func VersionString() string {
	vs := "v" + CurrentVersion()
	osArch := runtime.GOOS + "/" + runtime.GOARCH
	return fmt.Sprintf("%s %s %s",
		appname, vs, osArch)
}

func GetAppName() string {
	return appname
}
