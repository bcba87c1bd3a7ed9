// Package client fetches telemetry from a Hoymiles DTU.
//
// The client package wraps the external hoymiles-wifi library, which owns the
// proprietary DTU protocol and encryption-key handling. It invokes the
// library's command line interface, decodes the JSON telemetry document, and
// converts the DTU's fixed-point integer fields into engineering units.
package client
