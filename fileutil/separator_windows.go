package fileutil

// LineSeparator is the native line separator of the target platform.
const LineSeparator = "\r\n"
