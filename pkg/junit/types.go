// Package junit reads JUnit XML reports as emitted by colcon, pytest, gtest and most other test runners.
package junit

import "encoding/xml"

// TestSuites is the root element of a multi-suite report.
type TestSuites struct {
	XMLName xml.Name     `xml:"testsuites"`
	Suites  []*TestSuite `xml:"testsuite"`
}

type TestSuite struct {
	XMLName   xml.Name    `xml:"testsuite"`
	TestCases []*TestCase `xml:"testcase"`
	// Children are nested suites, as emitted by runners that group suites per package.
	Children []*TestSuite `xml:"testsuite"`
}

// TestCase holds only what decides the outcome. The content of the marker elements is not read.
type TestCase struct {
	Name      string   `xml:"name,attr"`
	Classname string   `xml:"classname,attr"`
	Skipped   *element `xml:"skipped"`
	Failure   *element `xml:"failure"`
	Error     *element `xml:"error"`
}

type element struct{}
