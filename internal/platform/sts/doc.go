// Package sts resolves the AWS identity kcstack runs as.
package sts
