package barchart

var NiceStep = niceStep
